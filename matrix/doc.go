// Package matrix provides dense matrix storage and linear-algebra primitives:
// allocation, elementwise access, LU decomposition, inversion, all-pairs
// shortest paths, the Moore-Penrose pseudoinverse, and the real cubic root
// solver the curve fitter builds on.
//
// Dense is the sole concrete Matrix implementation. Operations validate
// shape and finiteness up front and return sentinel errors from errors.go
// rather than panicking, except where the Matrix interface itself is
// violated by a caller (nil receiver).
package matrix
