/*
Package cli implements the lineup command-line tool. The optimize command
loads a candidate pool file and a search configuration, runs the search
and prints the shortlisted rosters as tables or JSON. The presets command
lists the named search configurations.
*/
package cli
