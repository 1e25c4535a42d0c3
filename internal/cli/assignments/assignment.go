package assignments

type AssignmentCmd struct {
	Add      AssignmentAddCmd      `cmd:"" help:"Add an assignment."`
	List     AssignmentListCmd     `cmd:"" help:"List assignments." default:"1"`
	Edit     AssignmentEditCmd     `cmd:"" help:"Edit an assignment."`
	Progress AssignmentProgressCmd `cmd:"" help:"Record progress (0-100)."`
	Complete AssignmentCompleteCmd `cmd:"" help:"Mark an assignment complete."`
	Include  AssignmentIncludeCmd  `cmd:"" help:"Include an assignment in planning."`
	Exclude  AssignmentExcludeCmd  `cmd:"" help:"Exclude an assignment from planning."`
	Delete   AssignmentDeleteCmd   `cmd:"" help:"Delete an assignment (soft delete)."`
	Restore  AssignmentRestoreCmd  `cmd:"" help:"Restore a deleted assignment."`
}
