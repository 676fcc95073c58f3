/*
Package vault implements a custodial vault. Every owner may open one vault
and deposit native value into it. The value is held by an address derived
from the owner, which has no private key: only this extension can move it,
and only back to the owner.

Two addresses are derived for every owner:

	state   = Derive("vault", stateBump, "state", owner)
	holding = Derive("vault", vaultBump, "vault", state)

The VaultState record stored under the state address keeps both bumps, so
the holding address can be recomputed for every later operation.
*/
package vault
