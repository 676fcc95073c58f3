/*
Package sigs provides basic authentication
middleware to verify the signatures on the transaction,
and maintain nonces for replay protection.

Every signature carries the sequence the signer expects to be next. A
signature verifies only against that sequence, after which the stored
sequence is incremented, so the same signed bytes are never accepted twice.
*/
package sigs
