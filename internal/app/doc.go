// Package app wires the application together. It builds the data model
// index, the task catalog, the binding registry and the handler table,
// registers the compiled-in modules, and applies every configured
// manifest, decoupled from any specific entrypoint like a CLI.
package app
