/*
Package gconf implements a configuration store intended to be used as a global,
in-database configuration.

Every extension owns a single configuration entry, stored under "_c:<pkg>".
It is written once from the genesis file and read by handlers that need it.
Not being able to get a configuration value is a critical condition for the
application, so the Must helpers panic.
*/
package gconf
