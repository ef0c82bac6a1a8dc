// Package column defines the contract between a generic columnar host and the
// custom column types it stores.
//
// The host never reaches into a column type's internals. It discovers a type by
// name through a Registry, asks the type's DType for an ArrayFactory, and from
// then on drives every array through the Array interface:
//
//	dt, ok := reg.Lookup("y2km")
//	arr, err := dt.ArrayFactory().FromStrings([]string{"2000-01", "2001-06"})
//
// This package imports nothing internal. Column types import column; column
// imports no column type.
package column
