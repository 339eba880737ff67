package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/eventdesk/internal/clock"
	"github.com/smallbiznis/eventdesk/internal/config"
	"github.com/smallbiznis/eventdesk/internal/entity"
	"github.com/smallbiznis/eventdesk/internal/observability"
	"github.com/smallbiznis/eventdesk/internal/report"
	"github.com/smallbiznis/eventdesk/internal/server"
	"github.com/smallbiznis/eventdesk/internal/snapshot"
	"github.com/smallbiznis/eventdesk/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core Infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,

		// Functional Domains
		entity.Module,
		snapshot.Module,
		report.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
