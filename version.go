package aether

// Version is reported by the CLI's version subcommand.
const Version = "0.3.0"
