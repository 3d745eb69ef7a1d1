/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"

	"github.com/apex/log"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/materials-commons/roster/pkg/config"
	"github.com/materials-commons/roster/pkg/rlog"
	"github.com/materials-commons/roster/pkg/rosterdb"
	"github.com/materials-commons/roster/pkg/rosterdb/stor"
	"github.com/materials-commons/roster/pkg/teams"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rosterd",
	Short: "Run the rosterd team membership API server",
	Long:  ``,
	Run: func(cmd *cobra.Command, args []string) {
		log.SetHandler(rlog.NewHandler(os.Stdout))

		c := config.MustLoadFromRosterDotenv()

		e := echo.New()
		e.HideBanner = true
		e.HidePort = true
		e.Use(middleware.Recover())

		db := rosterdb.MustConnectToDB()
		if err := rosterdb.RunMigrations(db); err != nil {
			log.Fatalf("Unable to run migrations: %s", err)
		}

		stors := stor.NewGormStors(db)
		teamService := teams.NewTeamService(stors)

		setupRoutes(e, RouteOpts{TeamService: teamService})

		port := c.GetKeyWithDefault("ROSTERD_PORT", "1360")
		log.Infof("rosterd listening on :%s", port)
		if err := e.Start(":" + port); err != nil {
			log.Fatalf("Unable to start server: %v", err)
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
