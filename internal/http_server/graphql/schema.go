package graphql

import (
	"github.com/flybg-dev/flyingsites/internal/interfaces/log"
	"github.com/flybg-dev/flyingsites/internal/interfaces/operation"
	"github.com/flybg-dev/flyingsites/internal/interfaces/service"
	"github.com/graphql-go/graphql"
)

// apiError surfaces a service status through the graphql errors array,
// carrying the machine code in extensions.
type apiError struct {
	status *service.ApiStatus
}

func (e *apiError) Error() string {
	return e.status.Description
}

func (e *apiError) Extensions() map[string]interface{} {
	return map[string]interface{}{"code": e.status.StatusName}
}

func statusError(status *service.ApiStatus) error {
	return &apiError{status: status}
}

// responseError converts a non-success service response into a resolver error.
func responseError[T any](response *service.ApiResponse[T]) error {
	return statusError(&service.ApiStatus{
		StatusName:  response.Code,
		Description: response.Message,
		HttpCode:    service.HttpCode(response.HttpCode),
	})
}

var localizedTextType = graphql.NewObject(graphql.ObjectConfig{
	Name: "LocalizedText",
	Fields: graphql.Fields{
		"bg": &graphql.Field{Type: graphql.String},
		"en": &graphql.Field{Type: graphql.String},
	},
})

var geoPointType = graphql.NewObject(graphql.ObjectConfig{
	Name: "GeoPoint",
	Fields: graphql.Fields{
		"longitude": &graphql.Field{Type: graphql.Float},
		"latitude":  &graphql.Field{Type: graphql.Float},
	},
})

var galleryImageType = graphql.NewObject(graphql.ObjectConfig{
	Name: "GalleryImage",
	Fields: graphql.Fields{
		"path":   &graphql.Field{Type: graphql.String},
		"author": &graphql.Field{Type: graphql.String},
		"width":  &graphql.Field{Type: graphql.Int},
		"height": &graphql.Field{Type: graphql.Int},
	},
})

var siteType = graphql.NewObject(graphql.ObjectConfig{
	Name: "FlyingSite",
	Fields: graphql.Fields{
		"id":               &graphql.Field{Type: graphql.Int},
		"title":            &graphql.Field{Type: localizedTextType},
		"url":              &graphql.Field{Type: graphql.String},
		"location":         &graphql.Field{Type: geoPointType},
		"windDirection":    &graphql.Field{Type: graphql.NewList(graphql.String)},
		"accessOptions":    &graphql.Field{Type: graphql.NewList(graphql.String)},
		"altitude":         &graphql.Field{Type: graphql.Float},
		"galleryImages":    &graphql.Field{Type: graphql.NewList(galleryImageType)},
		"tracklogs":        &graphql.Field{Type: localizedTextType},
		"localPilotsClubs": &graphql.Field{Type: localizedTextType},
		"accomodations":    &graphql.Field{Type: localizedTextType},
		"alternatives":     &graphql.Field{Type: localizedTextType},
		"landingFields":    &graphql.Field{Type: localizedTextType},
		"access":           &graphql.Field{Type: localizedTextType},
	},
})

var userType = graphql.NewObject(graphql.ObjectConfig{
	Name: "User",
	Fields: graphql.Fields{
		"id":           &graphql.Field{Type: graphql.Int},
		"email":        &graphql.Field{Type: graphql.String},
		"username":     &graphql.Field{Type: graphql.String},
		"isActive":     &graphql.Field{Type: graphql.Boolean},
		"isSuperAdmin": &graphql.Field{Type: graphql.Boolean},
	},
})

var authPayloadType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AuthPayload",
	Fields: graphql.Fields{
		"token": &graphql.Field{Type: graphql.String},
		"user":  &graphql.Field{Type: userType},
	},
})

var accountOutcomeType = graphql.NewObject(graphql.ObjectConfig{
	Name: "AccountOutcome",
	Fields: graphql.Fields{
		"email":   &graphql.Field{Type: graphql.String},
		"created": &graphql.Field{Type: graphql.Boolean},
		"reason":  &graphql.Field{Type: graphql.String},
	},
})

var migrationReportType = graphql.NewObject(graphql.ObjectConfig{
	Name: "MigrationReport",
	Fields: graphql.Fields{
		"updated": &graphql.Field{Type: graphql.Int},
		"skipped": &graphql.Field{Type: graphql.NewList(graphql.String)},
	},
})

// NewSchema wires the query and mutation roots onto the existing services.
// Resolvers never touch the database directly.
func NewSchema(
	logger log.LoggerInterface,
	siteService service.SiteServiceInterface,
	userService service.UserServiceInterface,
) (graphql.Schema, error) {
	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"sites": &graphql.Field{
				Type: graphql.NewList(siteType),
				Args: graphql.FieldConfigArgument{
					"windDirection": &graphql.ArgumentConfig{Type: graphql.String},
				},
				Resolve: func(params graphql.ResolveParams) (interface{}, error) {
					windDirection, _ := params.Args["windDirection"].(string)
					response := siteService.ListSites(&service.RequestSiteList{WindDirection: windDirection})
					if response.Data == nil {
						return nil, responseError(response)
					}
					return response.Data.Items, nil
				},
			},
			"compassDirections": &graphql.Field{
				Type: graphql.NewList(graphql.String),
				Resolve: func(params graphql.ResolveParams) (interface{}, error) {
					return operation.CompassDirections, nil
				},
			},
			"site": &graphql.Field{
				Type: siteType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(params graphql.ResolveParams) (interface{}, error) {
					id, _ := params.Args["id"].(string)
					response := siteService.GetSite(&service.RequestSiteGet{Id: id})
					if response.Data == nil {
						return nil, responseError(response)
					}
					return response.Data.Site, nil
				},
			},
		},
	})

	mutationType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"login": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(params graphql.ResolveParams) (interface{}, error) {
					username, _ := params.Args["username"].(string)
					password, _ := params.Args["password"].(string)
					response := userService.UserLogin(&service.RequestUserLogin{Username: username, Password: password})
					if response.Data == nil {
						return nil, responseError(response)
					}
					return response.Data, nil
				},
			},
			"requestActivation": &graphql.Field{
				Type: graphql.Boolean,
				Args: graphql.FieldConfigArgument{
					"email": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(params graphql.ResolveParams) (interface{}, error) {
					email, _ := params.Args["email"].(string)
					response := userService.RequestActivation(&service.RequestActivation{Email: email})
					if response.HttpCode != service.Ok.Code() {
						return nil, responseError(response)
					}
					return true, nil
				},
			},
			"completeActivation": &graphql.Field{
				Type: authPayloadType,
				Args: graphql.FieldConfigArgument{
					"token":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"username": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"password": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(params graphql.ResolveParams) (interface{}, error) {
					token, _ := params.Args["token"].(string)
					username, _ := params.Args["username"].(string)
					password, _ := params.Args["password"].(string)
					response := userService.CompleteActivation(&service.RequestCompleteActivation{
						Token:    token,
						Username: username,
						Password: password,
					})
					if response.Data == nil {
						return nil, responseError(response)
					}
					return response.Data, nil
				},
			},
			"createUserAccounts": &graphql.Field{
				Type: graphql.NewList(accountOutcomeType),
				Args: graphql.FieldConfigArgument{
					"emails": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.NewList(graphql.String))},
				},
				Resolve: func(params graphql.ResolveParams) (interface{}, error) {
					identity := IdentityFrom(params.Context)
					if !identity.Authenticated {
						return nil, statusError(&service.ErrInvalidOrExpiredJwt)
					}
					rawEmails, _ := params.Args["emails"].([]interface{})
					emails := make([]string, 0, len(rawEmails))
					for _, raw := range rawEmails {
						if email, ok := raw.(string); ok {
							emails = append(emails, email)
						}
					}
					response := userService.CreateUserAccounts(&service.RequestCreateAccounts{
						Uid:          identity.Uid,
						IsSuperAdmin: identity.IsSuperAdmin,
						Emails:       emails,
					})
					if response.Data == nil {
						return nil, responseError(response)
					}
					return response.Data.Outcomes, nil
				},
			},
			"migrateAddUrls": &graphql.Field{
				Type: migrationReportType,
				Resolve: func(params graphql.ResolveParams) (interface{}, error) {
					identity := IdentityFrom(params.Context)
					if !identity.Authenticated {
						return nil, statusError(&service.ErrInvalidOrExpiredJwt)
					}
					response := siteService.MigrateSiteUrls(&service.RequestSiteMigrate{
						Uid:          identity.Uid,
						IsSuperAdmin: identity.IsSuperAdmin,
					})
					if response.Data == nil {
						return nil, responseError(response)
					}
					return response.Data, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query:    queryType,
		Mutation: mutationType,
	})
	if err != nil {
		logger.ErrorF("Fail to build graphql schema: %v", err)
	}
	return schema, err
}
