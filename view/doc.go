// Package view holds the state behind the interactive pages. Every page
// routes its requests through a Gate so that a response can only land if
// no newer request was started and the page is still open.
package view
