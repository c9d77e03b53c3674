// Package utils provides the type conversions shared by the staging loads.
//
// Raw staging tables keep every value as text. ToString and the *String
// helpers render API values into that text; ParseInt and ParseInt64 cast it
// back in the curated transforms, where anything unparsable becomes NULL.
package utils
