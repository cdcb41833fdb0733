// Package importer turns input files into stored records.
//
// Inputs are processed strictly one after another. Each input either
// succeeds or fails on its own; a failing input is recorded in the Report and
// the batch moves on. Archive inputs are expanded and every inner file
// becomes its own record; the first inner failure stops that archive only.
// Records created before such a failure are complete and stay in the store.
package importer
