/*
Package ports defines the interfaces between the Espalier core and the
outside world, following Hexagonal Architecture.

  - SessionStore: persistence for machine snapshots ("Stop & Resume" for
    interactive stepping sessions).
  - PatternSource: supplier of pattern definitions (in-memory, YAML file).

Adapters live under pkg/adapters. RunSessionStoreContract is a reusable
test suite every SessionStore implementation must pass.
*/
package ports
