package file

import (
	"github.com/Tahsine/2giants-cli/internal/tools"
)

// RegisterAll registers all filesystem tools with the given registry.
func RegisterAll(registry *tools.Registry, wd *tools.Workdir) error {
	allTools := []*tools.Tool{
		ReadFileTool(wd),
		WriteFileTool(wd),
		EditFileTool(wd),
		ListDirectoryTool(wd),
		DeleteFileTool(wd),
		CreateDirectoryTool(wd),
	}

	for _, tool := range allTools {
		if err := registry.Register(tool); err != nil {
			return err
		}
	}

	return nil
}
