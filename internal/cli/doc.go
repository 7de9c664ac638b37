// Package cli implements the nerdminer command-line interface.
//
// The root command runs the dashboard. Subcommands are small:
//
//	nerdminer                   - Run the dashboard
//	nerdminer config            - Print the effective configuration as YAML
//	nerdminer doctor [--json]   - Diagnose config, terminal and endpoints
//	nerdminer version [--short] - Print build information
//
// # Flag Handling
//
// Global flags (--config, --no-color, --debug, --status-addr) are defined on
// the root command and available to all subcommands; doctor checks the
// --status-addr it is given. --plain only affects the dashboard. Flags override values from the config file, which
// override NERDMINER_* environment variables and built-in defaults.
//
// # Front Ends
//
// In auto mode the Bubble Tea front end is used when both stdin and stdout
// are terminals, otherwise the plain front end. Both satisfy the same key
// source and display contract, so the supervisor is unaware of which one
// is running.
package cli
