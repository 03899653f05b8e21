// Package cli implements the interactive passkeeper shell.
//
// The shell reads one command per line:
//
//	register        create an account (password asked twice)
//	login           start a session
//	add             store a site credential
//	list            list stored credentials, without passwords
//	show <id>       reveal one credential
//	logout          end the session
//	help            print the command list
//	exit | quit     leave the program
//
// Passwords are read without echo when stdin is a terminal. Errors from the
// vault are turned into short user-facing messages; details go to the log.
package cli
