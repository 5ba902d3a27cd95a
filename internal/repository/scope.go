package repository

import "gorm.io/gorm"

// Scope restricts queries to the records an account may see. Administrators
// use an unrestricted scope; everyone else sees what is assigned to them.
type Scope struct {
	UserID   uint
	ClientID *uint
	All      bool
}

// Unrestricted returns a scope that sees every record.
func Unrestricted() Scope {
	return Scope{All: true}
}

// OwnedBy returns a scope limited to records assigned to userID, plus the
// linked client record when clientID is set.
func OwnedBy(userID uint, clientID *uint) Scope {
	return Scope{UserID: userID, ClientID: clientID}
}

// assigned filters table rows on assigned_to.
func (s Scope) assigned(db *gorm.DB, table string) *gorm.DB {
	if s.All {
		return db
	}
	return db.Where(table+".assigned_to = ?", s.UserID)
}

// clients filters the clients table, which also admits the linked client.
func (s Scope) clients(db *gorm.DB) *gorm.DB {
	if s.All {
		return db
	}
	if s.ClientID != nil {
		return db.Where("clients.assigned_to = ? OR clients.id = ?", s.UserID, *s.ClientID)
	}
	return db.Where("clients.assigned_to = ?", s.UserID)
}
