package tools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/cwikio/Hexa-Puffs/voyager"
)

func registerSearchTools(s *server.MCPServer, deps Deps) {
	searchPeople := mcp.NewTool("search_people",
		mcp.WithDescription("Search for people on LinkedIn by keywords."),
		mcp.WithString("keywords",
			mcp.Required(),
			mcp.Description("Search query (name, title, company, etc.)"),
		),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(10),
			mcp.Description("Maximum number of results to return"),
		),
	)
	s.AddTool(searchPeople, logged("search_people", deps, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keywords, err := req.RequireString("keywords")
		if err != nil {
			return errorResult(codeValidation, "keywords is required")
		}
		return handleSearchPeople(ctx, deps, keywords, req.GetInt("limit", 10))
	}))

	searchCompanies := mcp.NewTool("search_companies",
		mcp.WithDescription("Search for companies on LinkedIn by keywords."),
		mcp.WithString("keywords",
			mcp.Required(),
			mcp.Description("Search query (company name, industry, etc.)"),
		),
		mcp.WithNumber("limit",
			mcp.DefaultNumber(10),
			mcp.Description("Maximum number of results to return"),
		),
	)
	s.AddTool(searchCompanies, logged("search_companies", deps, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		keywords, err := req.RequireString("keywords")
		if err != nil {
			return errorResult(codeValidation, "keywords is required")
		}
		return handleSearchCompanies(ctx, deps, keywords, req.GetInt("limit", 10))
	}))

	getCompany := mcp.NewTool("get_company",
		mcp.WithDescription("Get detailed information about a LinkedIn company."),
		mcp.WithString("public_id",
			mcp.Required(),
			mcp.Description("The company's universal name / public ID (from URL or search results)"),
		),
	)
	s.AddTool(getCompany, logged("get_company", deps, func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		publicID, err := req.RequireString("public_id")
		if err != nil {
			return errorResult(codeValidation, "public_id is required")
		}
		return handleGetCompany(ctx, deps, publicID)
	}))
}

func handleSearchPeople(ctx context.Context, deps Deps, keywords string, limit int) (*mcp.CallToolResult, error) {
	sess, err := deps.Sessions.Acquire(ctx)
	if err != nil {
		return failure(err)
	}
	results, err := sess.Client().SearchPeople(ctx, keywords, voyager.SearchFilters{Limit: limit})
	if err != nil {
		return failure(err)
	}
	return successResult(map[string]any{"results": results, "count": len(results)})
}

func handleSearchCompanies(ctx context.Context, deps Deps, keywords string, limit int) (*mcp.CallToolResult, error) {
	sess, err := deps.Sessions.Acquire(ctx)
	if err != nil {
		return failure(err)
	}
	results, err := sess.Client().SearchCompanies(ctx, keywords, limit)
	if err != nil {
		return failure(err)
	}
	return successResult(map[string]any{"results": results, "count": len(results)})
}

func handleGetCompany(ctx context.Context, deps Deps, publicID string) (*mcp.CallToolResult, error) {
	sess, err := deps.Sessions.Acquire(ctx)
	if err != nil {
		return failure(err)
	}
	company, err := sess.Client().GetCompany(ctx, publicID)
	if err != nil {
		return failure(err)
	}
	return successResult(company)
}
