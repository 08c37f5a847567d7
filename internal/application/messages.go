package application

// User-facing message templates. Clients match on these, keep them stable.
const (
	msgUserCreated      = "User %s was created. %s"
	msgEntriesDeleted   = "Entries with the ID(s) %s were deleted from database."
	msgAllUsersDeleted  = "All users were deleted from database."
	msgLogsExported     = "Logs were exported to %s."
	msgNoUsersYetLogged = "User %s could not be created by %s because no users exist yet."
	msgUnknownActor     = "Unknown actor %s tried to perform an action."

	msgParameterMissing     = "Required parameter(s) missing: %s"
	msgIllegalColor         = "The color %s is not allowed! Valid colors are: %s"
	msgUserExists           = "User with the name %s already exists!"
	msgNoUsersYet           = "There are no users yet, the first user has to create themselves: %s unequal %s"
	msgUserNotFoundID       = "User with the ID %d does not exist!"
	msgUserNotFoundName     = "User with the name %s does not exist!"
	msgCannotDeleteSelf     = "User %s cannot delete themselves!"
	msgCannotDeleteSelfID   = "User with the ID %d cannot delete themselves!"
	msgUserReferenced       = "User %s is referenced by log entries and cannot be deleted!"
	msgUsersReferenced      = "Users are referenced by log entries and cannot be deleted!"
	msgLogNotFound          = "No log entity with id %d exists!"
	msgInvalidIDFormat      = "Required path variable was not found or request param has wrong format! Failed to convert value of type 'string' to required type 'int'; For input string: \"%s\""
	msgParameterNotPresent  = "Required String parameter '%s' is not present"
	msgInvalidBirthdate     = "Birthdate %s has the wrong format! Expected yyyy-MM-dd."
	msgNotPositive          = "%s must be greater than 0!"
	msgInvalidSeverity      = "Severity %s is not allowed! Valid severities are: INFO, WARNING, ERROR"
	msgInvalidTimeParameter = "Parameter %s has the wrong format! Expected yyyy-MM-ddTHH:mm:ss."
)
