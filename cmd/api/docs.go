package main

// @title           GestãoFácil API
// @version         1.0
// @description     API para gestão de pequenos negócios: clientes, catálogo, vendas, orçamentos, ordens de serviço e finanças
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.email  suporte@gestaofacil.com.br

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8080
// @BasePath  /api

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
