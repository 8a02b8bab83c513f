package orm
