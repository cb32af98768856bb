package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the wheel CLI version and build time.",
		Usage: "wheel version",
		Run: func([]string) error {
			printVersion()
			return nil
		},
	})
}
