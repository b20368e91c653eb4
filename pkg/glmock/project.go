package glmock

import (
	"fmt"

	"github.com/aarondl/opt/omit"
)

// Project is a project resource with its own variables and generic packages.
type Project struct {
	Resource

	Variables       *ResourceManager[*Resource]
	GenericPackages *GenericPackageManager
}

func projectBuilder(env *environment) func(path, id string, attrs omit.Val[Attributes]) *Project {
	return func(path, id string, attrs omit.Val[Attributes]) *Project {
		return &Project{
			Resource:        *newResource(path, id, attrs),
			Variables:       newResourceManager(env, kindVariables, fmt.Sprintf("projects/%s/variables", id), newResource),
			GenericPackages: newGenericPackageManager(env, fmt.Sprintf("projects/%s/packages/generic", id)),
		}
	}
}
