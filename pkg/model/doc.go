// Package model defines the records exchanged between the form surfaces, the
// controller and the prediction API: the ordered field definitions for the
// seven clinical features, the typed request payload, the prediction result
// returned by the service, and the fixed-shape summary renderers display.
//
// Field definitions ship as an embedded YAML document (fields.yaml) and can be
// replaced by an operator supplied file as long as it names exactly the same
// feature ids. A FieldSet is immutable once loaded; accessors hand out copies.
package model
