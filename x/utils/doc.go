/*
Package utils contains decorators that every application stack wants:
panic recovery, logging, savepoints, action tags and metrics.
*/
package utils
