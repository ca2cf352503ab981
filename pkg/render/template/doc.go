// Package template defines the template engine seam renderers depend on.
// The pongo subpackage provides the Django-syntax implementation used by the
// HTML renderer.
package template
