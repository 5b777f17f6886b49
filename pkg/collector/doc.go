// Package collector gathers Windows machine configuration one category
// at a time by shelling out to PowerShell and parsing its JSON output.
//
// Each category has an ordered list of pipelines: the first is the
// richest source, the rest are fallbacks for hosts where a cmdlet is
// missing or requires elevation. Collection is best-effort; a category
// whose every command fails surfaces an error the snapshotter records
// as an unavailable document rather than aborting the snapshot.
package collector
