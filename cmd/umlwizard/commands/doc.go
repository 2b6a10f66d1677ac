// Package commands defines the umlwizard CLI and wires dependencies for subcommands.
//
// Commands
//
//   - new        Start a new wizard session, discarding the current one
//   - submit     Submit the requirements (SRS) text
//   - usecase    Generate the use case diagram
//   - sequence   Generate the sequence diagrams
//   - activity   Generate the activity diagrams
//   - status     Show where the current session stands
//   - export     Write the generated diagrams as PNG files
//   - run        Walk through the wizard interactively
//   - serve      Serve the wizard as a web page
//
// # Implementation
//
// The root command loads configuration (file, .env, environment, flags) and
// builds the dependency graph before any subcommand runs. The step commands
// restore the session checkpoint from the home directory, run one wizard
// operation and save the checkpoint again, failed or not.
package commands
