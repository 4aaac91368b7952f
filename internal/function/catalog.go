package function

import (
	"context"

	"edd/internal/domain"
)

// catalogFunction is a directory function edd recognizes but has no
// implementation for yet. It lists and describes itself like any other
// function and fails with ErrNotImplemented when executed.
type catalogFunction struct {
	name        string
	description string
	usage       string
}

func (c *catalogFunction) Name() string        { return c.name }
func (c *catalogFunction) Description() string { return c.description }
func (c *catalogFunction) Usage() string       { return c.usage }

func (c *catalogFunction) Execute(ctx context.Context, args domain.Args) ([]string, error) {
	return nil, domain.ErrNotImplemented
}

func (c catalogFunction) constructor() Constructor {
	return func() (domain.Function, error) {
		fn := c
		return &fn, nil
	}
}

var catalog = []catalogFunction{
	{"GetDomainUser", "Returns all users for the current domain, or a single user with -u", "edd -f GetDomainUser [-u <username>] [-d <domain>]"},
	{"GetDomainGroup", "Returns all groups for the current domain, or a single group with -g", "edd -f GetDomainGroup [-g <groupname>] [-d <domain>]"},
	{"GetDomainGroupMember", "Returns the members of a domain group", "edd -f GetDomainGroupMember -g <groupname> [-d <domain>]"},
	{"GetDomainComputer", "Returns all computer objects in the domain", "edd -f GetDomainComputer [-d <domain>]"},
	{"GetDomainSID", "Returns the SID of the current or specified domain", "edd -f GetDomainSID [-d <domain>]"},
	{"GetDomainTrust", "Returns all trusts of the current or specified domain", "edd -f GetDomainTrust [-d <domain>]"},
	{"GetForest", "Returns the forest of the current or specified domain", "edd -f GetForest [-d <domain>]"},
	{"GetForestDomain", "Returns every domain in the current forest", "edd -f GetForestDomain [-d <domain>]"},
	{"GetDomainOU", "Returns all organizational units in the domain", "edd -f GetDomainOU [-d <domain>]"},
	{"GetDomainGPO", "Returns all group policy objects in the domain", "edd -f GetDomainGPO [-d <domain>]"},
	{"GetDomainObjectACL", "Returns the ACEs on an object, optionally limited to the given rights", "edd -f GetDomainObjectACL -n <canonicalname> [-a <right,right>]"},
	{"GetDomainSearch", "Runs a custom LDAP filter against the domain", "edd -f GetDomainSearch -q <ldap filter> [-d <domain>]"},
	{"GetNetLocalGroupMember", "Returns the members of a local group on a computer", "edd -f GetNetLocalGroupMember -c <computer> [-g <groupname>]"},
	{"GetNetSession", "Returns the sessions on a computer", "edd -f GetNetSession -c <computer>"},
	{"GetNetLoggedOn", "Returns the users logged on to a computer", "edd -f GetNetLoggedOn -c <computer>"},
	{"GetNetProcess", "Returns the processes running on a computer", "edd -f GetNetProcess -c <computer> [-u <username> -w <password>]"},
	{"FindDomainProcess", "Finds computers in the domain running the given process", "edd -f FindDomainProcess -p <processname> [-t <threads>]"},
	{"FindDomainUserLocation", "Finds computers where the given user has a session", "edd -f FindDomainUserLocation -u <username> [-t <threads>]"},
	{"FindDomainShare", "Finds readable shares on domain computers", "edd -f FindDomainShare [-t <threads>]"},
	{"ConvertNameToSID", "Converts a domain account name to its SID", "edd -f ConvertNameToSID -u <username> [-d <domain>]"},
	{"ConvertSIDToName", "Converts a SID to its domain account name", "edd -f ConvertSIDToName -u <sid>"},
	{"SetDomainUserPassword", "Sets the password of a domain user", "edd -f SetDomainUserPassword -u <username> -w <newpassword>"},
}
