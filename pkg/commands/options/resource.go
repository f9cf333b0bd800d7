package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/agenda/pkg/resource"
)

// ResourceOptions
type ResourceOptions struct {
	ID     string
	Name   string
	Type   string
	Color  string
	Avatar string
}

func AddResourceArgs(cmd *cobra.Command, o *ResourceOptions) {
	cmd.Flags().StringVar(&o.ID, "id", "",
		"Resource id. Generated when empty.")
	cmd.Flags().StringVarP(&o.Type, "type", "t", string(resource.TypeStaff),
		"Resource type: staff, room, equipment or any other tag.")
	cmd.Flags().StringVar(&o.Color, "color", "",
		`Display color, example: --color="#ff8800".`)
	cmd.Flags().StringVar(&o.Avatar, "avatar", "",
		"Avatar URL or path.")
}

func AddResourcePatchArgs(cmd *cobra.Command, o *ResourceOptions) {
	cmd.Flags().StringVar(&o.Name, "name", "", "New name.")
	cmd.Flags().StringVarP(&o.Type, "type", "t", "", "New type.")
	cmd.Flags().StringVar(&o.Color, "color", "", "New display color.")
	cmd.Flags().StringVar(&o.Avatar, "avatar", "", "New avatar.")
}

// Patch builds a patch from the flags that were set on cmd.
func (o *ResourceOptions) Patch(cmd *cobra.Command) resource.Patch {
	var p resource.Patch
	if cmd.Flags().Changed("name") {
		p.Name = &o.Name
	}
	if cmd.Flags().Changed("type") {
		t := resource.ParseType(o.Type)
		p.Type = &t
	}
	if cmd.Flags().Changed("color") {
		p.Color = &o.Color
	}
	if cmd.Flags().Changed("avatar") {
		p.Avatar = &o.Avatar
	}
	return p
}

// RemoveOptions
type RemoveOptions struct {
	RequireUnreferenced bool
}

func AddRemoveArgs(cmd *cobra.Command, o *RemoveOptions) {
	cmd.Flags().BoolVar(&o.RequireUnreferenced, "require-unreferenced", false,
		"Refuse to remove a resource that still has events booked.")
}
