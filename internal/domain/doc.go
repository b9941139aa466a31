// Package domain contains the core types shared by the extraction and
// analysis stages: the water class legend, export job records, watershed
// geometry and per-class area statistics.
package domain
