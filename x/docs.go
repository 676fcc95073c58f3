/*
Package x contains the extensions of the custody chain.

Extensions implement common functionality (Handler, Decorator,
etc.) and are combined together in the app package to construct
the application.

The root of this package only defines the Authenticator contract. Every
extension that moves funds receives an Authenticator in its constructor,
so signatures and program derived signers are checked the same way.
*/
package x
