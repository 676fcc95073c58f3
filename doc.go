/*
Package custody defines all common interfaces used to tie together the
store, the orm and the protocol extensions, as well as implementations of
some of the simpler components (when interfaces would be too much overhead).

Context is passed as context.Context between the app, the decorators and
the handlers. Every value the framework stores in the context has a pair of
accessors:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

Addresses are one-way digests of a Condition. A Condition either belongs to
an external signer (a public key) or is derived by a program from a list of
seeds and a bump, see Derive and FindDerived. Derived conditions never have a
private key; only the program that knows the seeds can present them to an
Authenticator, which is how a program authorizes moving funds it custodies.
*/
package custody
