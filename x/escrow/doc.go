/*
Package escrow implements a two party swap of two tokens.

A maker offers an amount of token A and asks for an amount of token B in
return. The offered tokens are moved into a custody account derived from
the escrow record, so neither party can spend them. A taker settles the
escrow by paying the asked amount of token B to the maker, in exchange
receiving everything held in custody. Until it is taken, the maker can
close the escrow and get the offered tokens back.

Every escrow is identified by its maker and a maker chosen seed:

	escrow  = Derive("escrow", bump, "escrow", maker, seed)
	custody = FindDerived("escrow", "vault", escrow)
*/
package escrow
