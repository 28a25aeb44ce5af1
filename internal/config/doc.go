// Package config loads the runtime configuration from the environment.
//
// Credentials and server settings come from EXCHANGE_* environment
// variables, optionally seeded from a .env file in the working directory.
// The room inventory for batch commands is a small YAML file referenced by
// ROOMCAL_ROOMS_FILE:
//
//	rooms:
//	  - email: boardroom@example.com
//	    name: Boardroom
//	  - email: huddle-2@example.com
//	    name: Huddle 2
package config
