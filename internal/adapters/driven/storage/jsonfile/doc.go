// Package jsonfile stores the input and output artifacts of a run as JSON files.
package jsonfile
