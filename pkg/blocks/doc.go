/*
Package blocks defines the contract between the bar and its blocks, a
registry of block kinds, and the built-in kinds.

A Block runs for the life of the bar. It publishes widgets through the API it
is handed and never writes to the protocol stream itself. Anything that may
block an OS thread (reading files, running commands, talking to Redis) goes
through API.Pool. A Block that returns an error takes the whole bar down to
crash recovery; there is no per-block restart.

# Built-in kinds

  - text: static text.
  - time: the current time in a Go layout.
  - command: the output of a shell command, optionally JSON.
  - file: the first line of a file, e.g. /proc/loadavg.
  - redis: the value of a Redis key.
*/
package blocks
