/*
Package auth verifies the ed25519 signatures attached to a transaction and
makes the signers available to the handlers through the Authenticator.

Every signer has a sequence stored in the "signers" bucket. A signature is
only valid for the current sequence value, which is incremented on use, so
that a signed transaction cannot be replayed.
*/
package auth
