package gen

// Version of the generator, reported by the CLI.
const Version = "v0.1.0"
