package shell

import (
	"github.com/Tahsine/2giants-cli/internal/tools"
)

// RegisterAll registers all shell and system tools with the given registry.
func RegisterAll(registry *tools.Registry, wd *tools.Workdir) error {
	allTools := []*tools.Tool{
		ExecuteCommandTool(wd),
		CurrentDirectoryTool(wd),
		ChangeDirectoryTool(wd),
		EnvironmentTool(),
		SystemInfoTool(wd),
	}

	for _, tool := range allTools {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}

	return nil
}
