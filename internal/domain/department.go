package domain

import "slices"

// AllFilter is the sentinel that disables a list filter.
const AllFilter = "Todos"

// DefaultDepartments is the institution's fixed list of organizational
// units, used both as ticket origin and inventory location.
var DefaultDepartments = []string{
	"Atencion al ciudadano",
	"Seguro social",
	"Supervision Educativa",
	"Consultoria Juridica",
	"Bienes Nacionales",
	"Planificacion y Presupuesto",
	"CNAE",
	"CRCA",
	"Comunidades Educativas",
	"Indigena",
	"Formacion e Investigacion Docente",
	"Despacho",
	"Gobernacion",
	"Sala Situacional",
	"Sige",
	"Gestion Humana",
	"Div. Media general y media tecnica",
	"Div. Primaria y Educacion especial",
	"Informatica",
	"Prensa",
	"Fundabit",
	"Unem",
	"Auditoria",
	"Barberia & Peluqueria",
	"Entes Externos",
}

// Profile describes the institution that owns the console. It feeds the
// report letterhead, the AI persona and the department vocabulary.
type Profile struct {
	AppName         string   `yaml:"app_name" json:"app_name"`
	ShortName       string   `yaml:"short_name" json:"short_name"`
	Name            string   `yaml:"name" json:"name"`
	Region          string   `yaml:"region" json:"region"`
	Responsible     string   `yaml:"responsible" json:"responsible"`
	ResponsibleRole string   `yaml:"responsible_role" json:"responsible_role"`
	Departments     []string `yaml:"departments" json:"departments"`
}

// DefaultProfile returns the built-in institution profile.
func DefaultProfile() Profile {
	return Profile{
		AppName:         "CDCE Móvil",
		ShortName:       "CDCE Anzoátegui",
		Name:            "Centro de Desarrollo de la Calidad Educativa",
		Region:          "Estado Anzoategui, Venezuela",
		Responsible:     "ING. José García",
		ResponsibleRole: "Encargado de Sala de Informática",
		Departments:     slices.Clone(DefaultDepartments),
	}
}

// HasDepartment reports whether name is part of the department list.
func (p Profile) HasDepartment(name string) bool {
	return slices.Contains(p.Departments, name)
}

// DefaultDepartment is the first department, used when a form leaves it blank.
func (p Profile) DefaultDepartment() string {
	if len(p.Departments) == 0 {
		return ""
	}
	return p.Departments[0]
}
