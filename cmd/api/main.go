package main

import "github.com/yigit/placementportal/cmd/api/commands"

// @title Placement Portal API
// @version 1.0
// @description Role-based placement portal connecting students and employers.

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.

func main() {
	commands.Execute()
}
