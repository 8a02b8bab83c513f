/*
Package contracts defines the interfaces shared by every extension of the
escrow state machine: storage, transactions, handlers, decorators and the
context values that carry block information.

Extensions live under x/. Each of them keeps its business rules in a model,
exposes messages that describe a requested state transition and registers
handlers that apply those messages to a KVStore. The app package glues the
extensions together and feeds transactions through them one at a time.

Context

We pass context through context.Context between app, middleware, and
handlers. For every value XYZ of type T that is supported in the context
there are two functions:

  WithXYZ(Context, T) Context
  GetXYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set to avoid lower-level modules
overwriting it (eg. height, block time).
*/
package contracts
