// Package api wires the HTTP surface of the blog list service.
//
//	@title						Blog List API
//	@version					1.0
//	@description				Users register, log in for a bearer token, and publish blog posts they own.
//	@description				Creating, liking and deleting posts requires `Authorization: Bearer <token>`;
//	@description				only the owner of a post may delete it.
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token from POST /api/login
//
//	@tag.name					blogs
//	@tag.description			Blog posts. Reads are public, writes need a token.
//
//	@tag.name					users
//	@tag.description			Registration and the user directory.
//
//	@tag.name					auth
//	@tag.description			Password login.
package api
