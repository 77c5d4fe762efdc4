// Package cli is the interactive shell in front of the authgate module.
//
// The REPL accepts the numbered menu entries of the classic console menu
// or their command names:
//
//	1 | register   create an identity
//	2 | login      password, then the displayed one-time code
//	3 | view       view the protected resource
//	4 | modify     modify the protected resource (admin only)
//	5 | logs       print the audit log (admin only)
//	6 | logout     end the session
//	7 | exit       leave the program (also "quit")
//	help           show the menu
//
// The one-time code is printed to the terminal it is typed back into, so
// the second factor only proves the user is at the console.
package cli
