/*
Package protocol implements the output side of the i3bar/swaybar JSON protocol.

The host bar expects a header object, the opening bracket of an infinite
array, and then one array of blocks per update, each followed by a comma:

	{"version":1,"click_events":false}
	[
	[{"full_text":"12:00","name":"time","instance":"0"}],
	[{"full_text":"12:01","name":"time","instance":"0"}],

The header must be written exactly once per host session. Channel enforces
this within a process; across in-place restarts the --no-init flag does.
*/
package protocol
