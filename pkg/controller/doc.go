// Package controller implements the form controller shared by the web and
// terminal surfaces. A Controller is built from an explicit FieldSet, a
// predict.Predictor and a set of ports; it never reaches for ambient state.
//
// Submit runs the idle -> pending -> {result, error} flow once per call:
// clear the banner, collect and check the inputs, post them, render the
// outcome. While a submission holds the controller's Guard, further calls
// return OutcomeBusy without touching the ports or the network.
package controller
