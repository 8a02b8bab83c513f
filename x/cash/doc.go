/*
Package cash keeps the coin balance of every address.

The Controller is the only way other extensions move value. It is also how
the balance held by an address is inspected.
*/
package cash
