/*
Package session orchestrates concurrent access to stepping sessions.

A session is one persisted machine (snapshot) identified by ID. The Manager
serializes operations per session with reference-counted locks, so two
requests stepping the same session cannot interleave their load-step-save
cycles, while different sessions proceed in parallel.
*/
package session
