package rbac

// Simple default policy. Expand as needed.
var RolePermissions = map[string][]string{
	"student": {
		"scholarship:view",
		"application:create",
		"application:edit",
		"application:submit",
		"application:view-own",
		"document:upload",
	},
	"reviewer": {
		"scholarship:view",
		"application:view-all",
		"application:review",
		"quota:view",
	},
	"admin": {
		"*", // everything
	},
}
