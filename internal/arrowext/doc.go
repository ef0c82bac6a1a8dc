// Package arrowext binds the y2km column type to Apache Arrow.
//
// Arrow plays the role of the generic columnar host: a y2km column is an Arrow
// extension array named "y2km" over int16 storage, and missing elements live
// in Arrow's validity bitmap. Persisting a column is Arrow IPC of that single
// int16 buffer; the type name travels as extension metadata, so readers that
// do not know the type still see plain int16 month-counts.
//
// Reading goes through the host's column.Registry: the stored type name picks
// the column.DType, and its factory builds the array from the int16 buffer and
// validity bitmap.
package arrowext
