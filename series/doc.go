// Package series holds bar data and the named output columns of a cycle
// analysis run.
package series
