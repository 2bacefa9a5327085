// Package operation
package operation

type DatabaseOperations struct {
	siteOperation SiteOperationInterface
	userOperation UserOperationInterface
}

func NewDatabaseOperations(
	siteOperation SiteOperationInterface,
	userOperation UserOperationInterface,
) *DatabaseOperations {
	return &DatabaseOperations{
		siteOperation: siteOperation,
		userOperation: userOperation,
	}
}

func (db *DatabaseOperations) SiteOperation() SiteOperationInterface {
	return db.siteOperation
}

func (db *DatabaseOperations) UserOperation() UserOperationInterface {
	return db.userOperation
}
