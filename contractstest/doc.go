/*
Package contractstest provides mocks and helpers for testing extensions and
the application: authenticators, handlers, decorators, transactions and
ed25519 identities.
*/
package contractstest
