/*
Package cash defines a simple implementation of sending coins
between wallets.

There is no logic in the coins (tokens), except that the balance
of any coin may not go below zero. Thus, this implementation is
referred to as cash. Simple and safe.

Other extensions never write wallets directly. They move value through
Transfer, which refuses to debit an address the current context holds no
authority over. A derived address has no key, so the only way to debit it is
for the extension that derived it to put its condition into the context.
*/
package cash
