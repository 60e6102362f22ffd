// Secops-export manages Chronicle data-export jobs: long-running
// operations that copy a time-bounded slice of instance data into a
// GCS bucket.
//
// Usage:
//
//	# Export the last day and watch it to completion (default action)
//	secops-export
//
//	# Export the last 7 days of two log types
//	secops-export create --days 7 --log-types OKTA,WINEVTLOG
//
//	# Watch an existing job
//	secops-export track <export-id>
//
//	# List recent jobs
//	secops-export list
//
//	# Stop an in-flight job
//	secops-export cancel <export-id>
//
//	# Show the service account to grant bucket access to
//	secops-export service-account
//
// Configuration comes from SECOPS_* environment variables or an
// optional secops-export.yaml file.
package main

func main() {
	Execute()
}
