// Package render produces the human-facing outputs of the analysis
// stage: the class map, the area bar chart and the terminal summary
// table.
package render
