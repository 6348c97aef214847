// Package npy reads and writes arrays in NumPy's .npy binary format.
//
// A file starts with the magic "\x93NUMPY", a major/minor version, a
// little-endian header length (2 bytes for v1.0, 4 bytes for v2.0/v3.0) and
// a Python dict literal:
//
//	{'descr': '<i8', 'fortran_order': False, 'shape': (2, 3), }
//
// followed by the raw element data.
//
// Supported descr values on read: b1, i1 i2 i4 i8, u1 u2 u4 u8, f4 f8,
// S<n> and U<n>, in either byte order. Fortran-ordered data is converted to
// row-major. Object arrays (pickles) and structured dtypes are rejected.
//
// Write always produces little-endian v1.0 files (v2.0 when the header does
// not fit in 65535 bytes) using |b1, <i8, <f8 or <U<n>.
package npy
