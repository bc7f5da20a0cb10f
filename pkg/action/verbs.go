package action

// Kubectl verbs recognized by the builder, split by whether a
// successful invocation can mutate cluster state. Read verbs never
// report changed; mutating verbs report changed on exit 0.
var (
	readVerbs = map[string]bool{
		"api-resources": true,
		"api-versions":  true,
		"cluster-info":  true,
		"describe":      true,
		"diff":          true,
		"explain":       true,
		"get":           true,
		"logs":          true,
		"top":           true,
		"version":       true,
	}

	mutatingVerbs = map[string]bool{
		"annotate": true,
		"apply":    true,
		"cordon":   true,
		"create":   true,
		"delete":   true,
		"drain":    true,
		"expose":   true,
		"label":    true,
		"patch":    true,
		"replace":  true,
		"rollout":  true,
		"scale":    true,
		"set":      true,
		"taint":    true,
		"uncordon": true,
	}
)

// IsKnownVerb reports whether verb is a recognized kubectl operation.
func IsKnownVerb(verb string) bool {
	return readVerbs[verb] || mutatingVerbs[verb]
}

// IsReadVerb reports whether verb only reads cluster state.
func IsReadVerb(verb string) bool {
	return readVerbs[verb]
}

// IsMutatingVerb reports whether verb can mutate cluster state.
func IsMutatingVerb(verb string) bool {
	return mutatingVerbs[verb]
}
