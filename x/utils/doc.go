/*
Package utils holds the decorators every transaction passes through:
panic recovery, logging, metrics and savepoints.
*/
package utils
