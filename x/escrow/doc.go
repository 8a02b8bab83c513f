/*
Package escrow implements a three party escrow agreement.

An agreement binds a sender, a recipient and an arbitrator. The funds are
held by the agreement's own account, derived from its id. Once any two of the
three parties confirm, the whole held balance is released to the recipient.
After the expiration time the sender can void the agreement and take the
held balance back.

Agreements are never removed. A settled agreement holds a zero balance and
every further confirm or void succeeds without moving any funds.
*/
package escrow
